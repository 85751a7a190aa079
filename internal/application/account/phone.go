package account

import (
	"strconv"
	"strings"

	"github.com/ttacon/libphonenumber"
)

const nationalNumberLen = 10

// PhoneNormalizer reduces user input such as "+91 98765-43210" or
// "098765 43210" to the 10-digit national number used as the store key.
type PhoneNormalizer struct {
	region string
}

func NewPhoneNormalizer(region string) *PhoneNormalizer {
	if region == "" {
		region = "IN"
	}
	return &PhoneNormalizer{region: strings.ToUpper(region)}
}

func (n *PhoneNormalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}

	num, err := libphonenumber.Parse(raw, n.region)
	if err != nil {
		return "", ErrInvalidPhone
	}

	national := strconv.FormatUint(num.GetNationalNumber(), 10)
	if len(national) != nationalNumberLen {
		return "", ErrInvalidPhone
	}
	return national, nil
}

// contactCandidates lists the stored formats a national number may have been
// registered under.
func contactCandidates(national string) []string {
	return []string{national, "91" + national, "0" + national}
}
