package recaptcha

import (
	"github.com/mojocn/base64Captcha"
)

// DefaultCaptcha guards the login form against password guessing.
var DefaultCaptcha = NewCaptchaTool(base64Captcha.DefaultMemStore)

type CaptchaTool struct {
	store base64Captcha.Store
}

type CaptchaData struct {
	CaptchaId string `json:"captcha_id"`
	Data      string `json:"data"`
	Answer    string `json:"answer"`
}

var digitDriver = base64Captcha.DriverDigit{
	Height:   50,
	Width:    130,
	Length:   4,
	MaxSkew:  0.5,
	DotCount: 1,
}

func NewCaptchaTool(store base64Captcha.Store) *CaptchaTool {
	return &CaptchaTool{store: store}
}

func (c *CaptchaTool) GenerateCaptcha() (*CaptchaData, error) {
	code := base64Captcha.NewCaptcha(&digitDriver, c.store)
	id, b64s, _, err := code.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaData{
		CaptchaId: id,
		Data:      b64s,
	}, nil
}

// Verify consumes the captcha whether or not the answer is right.
func (c *CaptchaTool) Verify(data *CaptchaData) bool {
	if data.CaptchaId == "" || data.Answer == "" {
		return false
	}
	return c.store.Verify(data.CaptchaId, data.Answer, true)
}
