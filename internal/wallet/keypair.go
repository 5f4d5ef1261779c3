package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// Keypair is a locally generated chain keypair. No network call is involved
// in producing one.
type Keypair struct {
	Address     string  `json:"address"`
	PrivateKey  string  `json:"privateKey"`
	Mnemonic    *string `json:"mnemonic,omitempty"`
	Network     string  `json:"network"`
	KeypairType string  `json:"keypairType"`
}

// GenerateKeypair creates a fresh keypair for the requested chain ecosystem.
// "solana" (the default) produces an ed25519 pair with base58 encoding;
// "polygon"/"evm" produces a secp256k1 pair with a BIP-39 mnemonic, the key
// derived from the mnemonic seed so the phrase restores the same account.
func GenerateKeypair(network string) (*Keypair, error) {
	switch network {
	case "", "solana":
		return generateSolanaKeypair()
	case "polygon", "evm":
		return generateEvmKeypair(network)
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

func generateSolanaKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		Address:     base58.Encode(pub),
		PrivateKey:  base58.Encode(priv),
		Network:     "solana",
		KeypairType: "ed25519",
	}, nil
}

func generateEvmKeypair(network string) (*Keypair, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := ethcrypto.ToECDSA(seed[:32])
	if err != nil {
		return nil, err
	}

	if network == "evm" {
		network = "polygon"
	}

	return &Keypair{
		Address:     ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey:  fmt.Sprintf("0x%x", ethcrypto.FromECDSA(key)),
		Mnemonic:    &mnemonic,
		Network:     network,
		KeypairType: "secp256k1",
	}, nil
}
