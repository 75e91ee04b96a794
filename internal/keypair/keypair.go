package keypair

import (
	"bufio"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mr-tron/base58"
)

// Keypair is an ed25519 keypair with its Solana-style base58 address.
// The Secret holds the full 64-byte expanded key (seed + public key),
// the layout Solana tooling expects.
type Keypair struct {
	Public ed25519.PublicKey
	Secret ed25519.PrivateKey
}

// Address returns the base58 encoding of the public key. This is the
// string the pattern matcher tests against.
func (k Keypair) Address() string {
	return base58.Encode(k.Public)
}

// SecretBase58 returns the base58 encoding of the 64-byte secret key.
func (k Keypair) SecretBase58() string {
	return base58.Encode(k.Secret)
}

// Wipe zeroes the key material in place. Call on every candidate that
// is not reported to the coordinator.
func (k *Keypair) Wipe() {
	for i := range k.Secret {
		k.Secret[i] = 0
	}
	for i := range k.Public {
		k.Public[i] = 0
	}
}

// WriteFile writes the secret key as a JSON array of 64 bytes, the
// file format `solana-keygen` and web wallets import.
func (k Keypair) WriteFile(path string) error {
	raw := make([]int, len(k.Secret))
	for i, b := range k.Secret {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding keypair: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing keypair file: %w", err)
	}
	return nil
}

// ReadFile loads a keypair from a JSON byte-array file written by
// WriteFile or by Solana tooling.
func ReadFile(path string) (Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keypair{}, fmt.Errorf("reading keypair file: %w", err)
	}
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return Keypair{}, fmt.Errorf("decoding keypair file: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return Keypair{}, fmt.Errorf("keypair file holds %d bytes, want %d", len(raw), ed25519.PrivateKeySize)
	}
	secret := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, b := range raw {
		if b < 0 || b > 255 {
			return Keypair{}, fmt.Errorf("keypair file byte %d out of range: %d", i, b)
		}
		secret[i] = byte(b)
	}
	return Keypair{
		Public: secret.Public().(ed25519.PublicKey),
		Secret: secret,
	}, nil
}

// Generator produces random keypairs from its own entropy stream.
// Each worker owns exactly one Generator; a Generator is not safe for
// concurrent use. Buffering the system CSPRNG keeps workers from
// contending on the entropy syscall in the hot loop.
type Generator struct {
	rng io.Reader
}

// NewGenerator creates a generator backed by a private buffered reader
// over crypto/rand.
func NewGenerator() *Generator {
	return &Generator{rng: bufio.NewReaderSize(rand.Reader, 4096)}
}

// NewGeneratorFromReader creates a generator over a caller-supplied
// entropy source. Used in tests; production code uses NewGenerator.
func NewGeneratorFromReader(rng io.Reader) *Generator {
	return &Generator{rng: rng}
}

// Generate returns one fresh keypair. Full entropy per call; candidate
// keys carry no correlation with each other or with any search pattern.
func (g *Generator) Generate() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(g.rng)
	if err != nil {
		return Keypair{}, fmt.Errorf("generating keypair: %w", err)
	}
	return Keypair{Public: pub, Secret: priv}, nil
}
