package wallet

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/cryptoutil"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/model"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/pgerr"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
)

type walletService struct {
	repo walletRepository
	// encryptionKey seals private key material at rest when configured.
	// nil preserves the original plaintext behavior.
	encryptionKey []byte
}

type OwnerSummary struct {
	Id    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WalletResponse exposes only the enumerable scalar fields plus the owning
// user. Key material is write-only through this API.
type WalletResponse struct {
	Id        uint64        `json:"id"`
	Address   string        `json:"address"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *OwnerSummary `json:"user,omitempty"`
}

func toResponse(w model.Wallet) *WalletResponse {
	response := &WalletResponse{Id: w.Id, Address: w.Address, CreatedAt: w.CreatedAt}
	if w.User != nil {
		response.User = &OwnerSummary{Id: w.User.Id, Name: w.User.Name, Email: w.User.Email}
	}
	return response
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
}

func (s *walletService) sealKeyMaterial(wallet *model.Wallet) *reject.ProblemWithTrace {
	if s.encryptionKey == nil {
		return nil
	}

	sealed, err := cryptoutil.Seal(wallet.PrivateKey, s.encryptionKey)
	if err != nil {
		return unexpected(err)
	}
	wallet.PrivateKey = sealed

	if wallet.Mnemonic != nil {
		sealedMnemonic, err := cryptoutil.Seal(*wallet.Mnemonic, s.encryptionKey)
		if err != nil {
			return unexpected(err)
		}
		wallet.Mnemonic = &sealedMnemonic
	}

	return nil
}

func (s *walletService) create(body createWalletRequest) (*WalletResponse, *reject.ProblemWithTrace) {
	wallet := model.Wallet{
		UserId:     body.UserId,
		Address:    body.Address,
		PrivateKey: body.PrivateKey,
		Mnemonic:   body.Mnemonic,
	}

	if problem := s.sealKeyMaterial(&wallet); problem != nil {
		return nil, problem
	}

	if err := s.repo.create(&wallet); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("wallet address already exists"),
				Cause:   err,
			}
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("user not found"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	return s.findById(wallet.Id)
}

func (s *walletService) findAll() ([]WalletResponse, *reject.ProblemWithTrace) {
	wallets, err := s.repo.list()
	if err != nil {
		return nil, unexpected(err)
	}

	responses := make([]WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		responses = append(responses, *toResponse(w))
	}
	return responses, nil
}

func (s *walletService) findById(id uint64) (*WalletResponse, *reject.ProblemWithTrace) {
	wallet, err := s.repo.getWithOwner(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem("wallet not found"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	return toResponse(*wallet), nil
}

func (s *walletService) findByUser(userId uint64) ([]WalletResponse, *reject.ProblemWithTrace) {
	wallets, err := s.repo.listByUser(userId)
	if err != nil {
		return nil, unexpected(err)
	}

	responses := make([]WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		responses = append(responses, *toResponse(w))
	}
	return responses, nil
}

func (s *walletService) update(id uint64, body updateWalletRequest) (*WalletResponse, *reject.ProblemWithTrace) {
	wallet, err := s.repo.get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem("wallet not found"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	wallet.Address = body.Address
	wallet.PrivateKey = body.PrivateKey
	wallet.Mnemonic = body.Mnemonic
	if problem := s.sealKeyMaterial(wallet); problem != nil {
		return nil, problem
	}

	if err := s.repo.save(wallet); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("wallet address already exists"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	return s.findById(wallet.Id)
}

func (s *walletService) delete(id uint64) *reject.ProblemWithTrace {
	affected, err := s.repo.delete(id)
	if err != nil {
		return unexpected(err)
	}
	if affected == 0 {
		return &reject.ProblemWithTrace{
			Problem: reject.NotFoundProblem("wallet not found"),
			Cause:   gorm.ErrRecordNotFound,
		}
	}
	return nil
}
