package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/collection"
	"github.com/jetcv-labs/jetcv-backend/internal/crossmint"
	"github.com/jetcv-labs/jetcv-backend/internal/cv"
	"github.com/jetcv-labs/jetcv-backend/internal/health"
	"github.com/jetcv-labs/jetcv-backend/internal/lighthouse"
	"github.com/jetcv-labs/jetcv-backend/internal/nft"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/cryptoutil"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/middleware"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/pubsub"
	"github.com/jetcv-labs/jetcv-backend/internal/user"
	"github.com/jetcv-labs/jetcv-backend/internal/veriff"
	"github.com/jetcv-labs/jetcv-backend/internal/wallet"
)

func main() {
	setupViper()
	setupZerolog()
	pubsub.InitPubSub()
	db := setupDb()
	apiRouter := setupApiRouter(db)

	defer func() { pubsub.CloseClient() }()

	port := viper.GetString("PORT")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	log.Info().Msgf("Starting server on port %s", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupDb() *gorm.DB {
	dbUrl := viper.GetString("DB_URL")

	b := &backoff.Backoff{
		Min:    250 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	deadline := time.Now().Add(60 * time.Second)

	var db *gorm.DB
	var err error
	for {
		db, err = gorm.Open(postgres.Open(dbUrl), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		log.Warn().Err(err).Msg("Database not reachable yet, retrying")
		time.Sleep(b.Duration())
	}

	sqlDb, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to access database pool")
	}

	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func setupApiRouter(db *gorm.DB) *gin.Engine {
	apiRouter := gin.Default()

	middleware.RegisterGlobalMiddleware(apiRouter)
	health.RegisterRoutes(apiRouter)

	routerGroup := apiRouter.Group("/api")

	crossmintClient := crossmint.NewClientFromConfig()
	ipfsClient := lighthouse.NewClientFromConfig()
	veriffClient := veriff.NewClientFromConfig()

	user.RegisterRoutes(routerGroup, db)
	wallet.RegisterRoutes(routerGroup, db, encryptionKey())
	nft.RegisterRoutes(routerGroup, crossmintClient, ipfsClient)
	collection.RegisterRoutes(routerGroup, crossmintClient)
	cv.RegisterRoutes(routerGroup)
	veriff.RegisterRoutes(routerGroup, veriffClient)

	return apiRouter
}

func encryptionKey() []byte {
	encoded := viper.GetString("ENCRYPTION_KEY")
	if encoded == "" {
		log.Info().Msg("ENCRYPTION_KEY not set, wallet key material stored as received")
		return nil
	}
	key, err := cryptoutil.ParseKey(encoded)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ENCRYPTION_KEY")
	}
	return key
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "4000")
	viper.SetDefault("BASE_URL", "http://localhost:4000")
	viper.SetDefault("CROSSMINT_BASE_URL", "https://www.crossmint.com/api/2022-06-09")
	viper.SetDefault("VERIFF_BASE_URL", "https://stationapi.veriff.com/v1")
	viper.SetDefault("VERIFF_SDK_URL", "https://station.veriff.com")
	viper.SetDefault("LIGHTHOUSE_NODE_URL", "https://node.lighthouse.storage")
	viper.SetDefault("CV_FILE_DIR", "cv-files")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
