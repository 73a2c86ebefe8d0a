package pkg

import (
	"crypto/rand"
	"math/big"
)

const CodeLength = 6

var ten = big.NewInt(10)

// RandomCode n 位数字验证码
func RandomCode(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		x, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b[i] = byte('0' + x.Int64())
	}
	return string(b), nil
}
