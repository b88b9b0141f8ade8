package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"scooter-rental-backend/internal/domain"
)

// NormalizeCardNumber strips spaces and dashes from a card number.
func NormalizeCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	return strings.ReplaceAll(number, "-", "")
}

// ClassifyCardNetwork determines the card network from the numeric prefix.
func ClassifyCardNetwork(number string) domain.CardNetwork {
	number = NormalizeCardNumber(number)

	switch {
	case strings.HasPrefix(number, "62"), strings.HasPrefix(number, "81"):
		return domain.NetworkUnionPay
	case strings.HasPrefix(number, "4"):
		return domain.NetworkVisa
	case hasPrefixInRange(number, "51", "55"):
		return domain.NetworkMasterCard
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return domain.NetworkAmex
	case strings.HasPrefix(number, "6"):
		return domain.NetworkDiscover
	default:
		return domain.NetworkUnknown
	}
}

func hasPrefixInRange(number, low, high string) bool {
	if len(number) < 2 {
		return false
	}
	prefix := number[:2]
	return prefix >= low && prefix <= high
}

// IsValidCardNumber runs the Luhn checksum over a 13-19 digit card number.
func IsValidCardNumber(number string) bool {
	number = NormalizeCardNumber(number)

	if len(number) < 13 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry checks that the MM/YY expiry parses and is not in the past.
func ValidateExpiry(expiryMonth, expiryYear string) error {
	month, err := strconv.Atoi(expiryMonth)
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("invalid expiry month")
	}
	year, err := strconv.Atoi(expiryYear)
	if err != nil {
		return fmt.Errorf("invalid expiry year")
	}

	now := time.Now().UTC()
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return fmt.Errorf("card has expired")
	}
	return nil
}

// ValidateCard checks the card number, expiry and CVV length. The CVV must be
// 4 digits for American Express and 3 digits for every other network.
func ValidateCard(number, expiryMonth, expiryYear, cvv string) error {
	if !IsValidCardNumber(number) {
		return fmt.Errorf("invalid card number")
	}

	if err := ValidateExpiry(expiryMonth, expiryYear); err != nil {
		return err
	}

	network := ClassifyCardNetwork(number)
	if network == domain.NetworkAmex {
		if len(cvv) != 4 {
			return fmt.Errorf("American Express cards require a 4-digit CVV")
		}
	} else if len(cvv) != 3 {
		return fmt.Errorf("CVV must be 3 digits")
	}

	return nil
}
