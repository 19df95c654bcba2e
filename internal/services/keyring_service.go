package services

import (
	"errors"
	"runtime"

	"github.com/zalando/go-keyring"
)

const serviceName = "docsync"

// gatewayAccount is the keychain account holding the agent gateway API key.
const gatewayAccount = "agent-gateway"

func GetOS() string {
	return runtime.GOOS
}

// KeyringService stores the agent gateway credential in the OS keychain so
// it never lands in the session-local database.
type KeyringService struct {
}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) Startup() {}

func (s *KeyringService) StoreGatewayKey(apiKey string) error {
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(serviceName, gatewayAccount, apiKey)
}

func (s *KeyringService) GetGatewayKey() (string, error) {
	return keyring.Get(serviceName, gatewayAccount)
}

func (s *KeyringService) HasGatewayKey() bool {
	_, err := keyring.Get(serviceName, gatewayAccount)
	return err == nil
}

func (s *KeyringService) DeleteGatewayKey() error {
	err := keyring.Delete(serviceName, gatewayAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
