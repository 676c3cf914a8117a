package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap a protected private key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyProvider returns the transport key pair loaded from configuration.
// Missing or invalid key material is a start-up error.
func (c *Container) KeyProvider() (*cryptoService.KeyProvider, error) {
	return lazy(c, &c.keyProviderInit, "keyProvider", &c.keyProvider, func() (*cryptoService.KeyProvider, error) {
		provider, err := cryptoService.LoadKeyProvider(c.ctx, cryptoService.KeySource{
			PrivateKey:     c.config.RSAPrivateKey,
			PrivateKeyPath: c.config.RSAPrivateKeyPath,
			PublicKeyPath:  c.config.RSAPublicKeyPath,
			KMSKeyURI:      c.config.RSAPrivateKeyKMSKeyURI,
			MinKeyBits:     c.config.RSAMinKeyBits,
		}, c.KMSService())
		if err != nil {
			return nil, fmt.Errorf("failed to load transport key pair: %w", err)
		}
		return provider, nil
	})
}

// TransportCipher returns the RSA cipher used to decrypt login passwords.
func (c *Container) TransportCipher() (cryptoService.TransportCipher, error) {
	return lazy(c, &c.transportCipherInit, "transportCipher", &c.transportCipher, func() (cryptoService.TransportCipher, error) {
		padding, err := cryptoDomain.ParsePadding(c.config.RSAPadding)
		if err != nil {
			return nil, err
		}
		provider, err := c.KeyProvider()
		if err != nil {
			return nil, err
		}
		return cryptoService.NewTransportCipher(provider, padding)
	})
}
