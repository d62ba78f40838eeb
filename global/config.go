package global

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/util"
	"golang.org/x/crypto/scrypt"
)

var ErrConfigNotFound = errors.New("config not found")

func strongKey(key string) []byte {
	dk, _ := scrypt.Key([]byte(key), []byte("hDhR!pr0xy#s4lt$&2019_lineup@json"), 16384, 8, 1, 32)
	return dk
}

// SessionSecret derives the cookie store key from the login password, so
// changing the password invalidates every open session.
func SessionSecret() []byte {
	pass, err := GetConfig("password")
	if err != nil || pass == "" {
		pass = "sessionSecret"
	}
	return strongKey(pass)
}

func GetConfig(key string) (string, error) {
	if confValue, ok := ConfigCache.Load(key); ok {
		return confValue, nil
	}
	var value model.Config
	err := DB.Where("name = ?", key).First(&value).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return "", ErrConfigNotFound
		}
		return "", err
	}
	ConfigCache.Store(key, value.Data)
	return value.Data, nil
}

func GetBoolConfig(key string) bool {
	v, err := GetConfig(key)
	if err != nil {
		return false
	}
	return util.ParseBool(v)
}

func SetConfig(key, value string) error {
	data := model.Config{Name: key, Data: value}
	err := DB.Save(&data).Error
	if err == nil {
		ConfigCache.Store(key, value)
	}
	return err
}

func IsKnownConfig(key string) bool {
	_, ok := defaultConfigValue[key]
	return ok
}

// ConfigMap returns every known setting except the login password.
func ConfigMap() map[string]string {
	m := make(map[string]string, len(defaultConfigValue))
	for key := range defaultConfigValue {
		if key == "password" {
			continue
		}
		v, _ := GetConfig(key)
		m[key] = v
	}
	return m
}

// SaveConfigForm persists the posted fields that name a known setting.
func SaveConfigForm(form url.Values) error {
	for key, values := range form {
		if !IsKnownConfig(key) || len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		switch key {
		case "password":
			if value == "" {
				continue
			}
		case "ddns":
			value = strings.TrimSuffix(value, "/")
			if value != "" && !IsValidURL(value) {
				return fmt.Errorf("ddns %q is not an absolute url", value)
			}
		}
		if err := SetConfig(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	M3UCache.Flush()
	return nil
}

// ConfigStore exposes the settings table to the web layer.
type ConfigStore struct {
	// OnSave runs after a successful settings save.
	OnSave func()
}

func (s *ConfigStore) Get(key string) (string, error) { return GetConfig(key) }
func (s *ConfigStore) GetBool(key string) bool         { return GetBoolConfig(key) }
func (s *ConfigStore) Set(key, value string) error     { return SetConfig(key, value) }
func (s *ConfigStore) ToMap() map[string]string        { return ConfigMap() }

func (s *ConfigStore) Save(form url.Values) error {
	if err := SaveConfigForm(form); err != nil {
		return err
	}
	if s.OnSave != nil {
		s.OnSave()
	}
	return nil
}

func (s *ConfigStore) Load() Settings { return LoadSettings() }
