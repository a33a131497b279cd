// Package keyring provides secure storage for gateway newscaps.
// Newscaps are capability URIs and must be treated as secrets: anyone
// holding one can read the gateway's news stream. The package uses the
// system keyring when available, falling back to an encrypted local file
// when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/yllada/grid-manager/common"
)

// serviceName is the identifier used in the system keyring.
const serviceName = "grid-manager"

// Common errors returned by keyring operations.
var (
	ErrNotFound = common.ErrCapNotFound
	ErrStorage  = common.ErrCapStorage
)

// Storage backend state
var (
	useLocalStorage bool
	localStoreMu    sync.RWMutex
	localStore      map[string]string
	localStoreFile  string
	encryptionKey   []byte
	initialized     bool
)

func init() {
	initStorage()
}

func initStorage() {
	if initialized {
		return
	}

	// Probe the system keyring before trusting it
	testKey := "grid-manager-test-init"
	err := keyring.Set(serviceName, testKey, "test")
	if err == nil {
		keyring.Delete(serviceName, testKey)
		useLocalStorage = false
	} else {
		useLocalStorage = true
		initLocalStorage()
	}
	initialized = true
}

func initLocalStorage() {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", common.ConfigDirName)
	os.MkdirAll(configDir, 0700)
	localStoreFile = filepath.Join(configDir, common.NewscapsFileName)

	// Derive the encryption key from machine-specific data
	hostname, _ := os.Hostname()
	machineID := getMachineID()
	keyData := fmt.Sprintf("grid-manager-%s-%s-%d", hostname, machineID, os.Getuid())
	hash := sha256.Sum256([]byte(keyData))
	encryptionKey = hash[:]

	localStore = make(map[string]string)
	loadLocalStore()
}

func getMachineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

func loadLocalStore() {
	data, err := os.ReadFile(localStoreFile)
	if err != nil {
		return
	}

	decrypted, err := decrypt(data)
	if err != nil {
		return
	}

	json.Unmarshal(decrypted, &localStore)
}

func saveLocalStore() error {
	localStoreMu.RLock()
	data, err := json.Marshal(localStore)
	localStoreMu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}

	return os.WriteFile(localStoreFile, encrypted, 0600)
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Store saves the newscap for a gateway.
func Store(gatewayName, cap string) error {
	if gatewayName == "" {
		return errors.New("gateway name cannot be empty")
	}
	if cap == "" {
		return errors.New("newscap cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.Lock()
		localStore[gatewayName] = cap
		localStoreMu.Unlock()
		if err := saveLocalStore(); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	}

	if err := keyring.Set(serviceName, gatewayName, cap); err != nil {
		// Fall back to the encrypted local file
		useLocalStorage = true
		initLocalStorage()
		localStoreMu.Lock()
		localStore[gatewayName] = cap
		localStoreMu.Unlock()
		if err := saveLocalStore(); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	return nil
}

// Get retrieves the newscap for a gateway.
func Get(gatewayName string) (string, error) {
	if gatewayName == "" {
		return "", errors.New("gateway name cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.RLock()
		cap, exists := localStore[gatewayName]
		localStoreMu.RUnlock()
		if !exists {
			return "", ErrNotFound
		}
		return cap, nil
	}

	cap, err := keyring.Get(serviceName, gatewayName)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		localStoreMu.RLock()
		cap, exists := localStore[gatewayName]
		localStoreMu.RUnlock()
		if exists {
			return cap, nil
		}
		return "", ErrNotFound
	}
	return cap, nil
}

// Delete removes the newscap for a gateway.
func Delete(gatewayName string) error {
	if gatewayName == "" {
		return errors.New("gateway name cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.Lock()
		delete(localStore, gatewayName)
		localStoreMu.Unlock()
		return saveLocalStore()
	}

	keyring.Delete(serviceName, gatewayName)

	// Also remove from local storage if present
	localStoreMu.Lock()
	delete(localStore, gatewayName)
	localStoreMu.Unlock()
	saveLocalStore()

	return nil
}

// Exists checks if a newscap is stored for a gateway.
func Exists(gatewayName string) bool {
	_, err := Get(gatewayName)
	return err == nil
}

// Keyring adapts the package-level functions to common.CapabilityStore
// so callers can be handed an injectable store.
type Keyring struct{}

// Store saves the newscap for a gateway.
func (Keyring) Store(gatewayName, cap string) error {
	return Store(gatewayName, cap)
}

// Get retrieves the newscap for a gateway.
func (Keyring) Get(gatewayName string) (string, error) {
	return Get(gatewayName)
}

// Delete removes the newscap for a gateway.
func (Keyring) Delete(gatewayName string) error {
	return Delete(gatewayName)
}
