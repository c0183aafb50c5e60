// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Account numbers and passwords are drawn from fixed numeric ranges.
const (
	accountNumberMin = 100000
	accountNumberMax = 999999
	passwordMin      = 1000
	passwordMax      = 9999
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer between min and max inclusive.
func IntBetween(min, max int) int {
	return min + int(Intn(max-min+1))
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 4 decimals.
func MoneyAmountBetween(min, max float64) string {
	return decimal.NewFromFloat(FloatBetween(min, max)).String()
}

// AccountNumber generates a random six digit account number.
func AccountNumber() string {
	return strconv.Itoa(IntBetween(accountNumberMin, accountNumberMax))
}

// Password generates a random four digit plaintext password.
func Password() string {
	return strconv.Itoa(IntBetween(passwordMin, passwordMax))
}
