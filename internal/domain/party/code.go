package party

import (
	"math/rand/v2"
	"strconv"
)

const (
	codeLetters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLetterCount  = 4
	codeDigitsMin    = 1000
	codeDigitsSpread = 9000

	RetailerCodePrefix = "RTL-"
	EmployeeCodePrefix = "EMP-"
)

type CodeSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultCodeSource is safe for concurrent use.
var DefaultCodeSource CodeSource = globalSource{}

// GenerateCode returns four uppercase letters followed by a number in 1000-9999.
// Codes are not unique by construction; the store's unique index rejects
// collisions and the caller retries with a fresh code.
func GenerateCode(src CodeSource) string {
	if src == nil {
		src = DefaultCodeSource
	}
	buf := make([]byte, 0, codeLetterCount+4)
	for i := 0; i < codeLetterCount; i++ {
		buf = append(buf, codeLetters[src.IntN(len(codeLetters))])
	}
	buf = strconv.AppendInt(buf, int64(codeDigitsMin+src.IntN(codeDigitsSpread)), 10)
	return string(buf)
}

// AssignRetailerCodes overwrites both generated codes.
func AssignRetailerCodes(r *Retailer, src CodeSource) {
	r.UniqueID = GenerateCode(src)
	r.RetailerCode = RetailerCodePrefix + GenerateCode(src)
}

func AssignEmployeeCodes(e *Employee, src CodeSource) {
	e.UniqueID = GenerateCode(src)
	e.EmployeeID = EmployeeCodePrefix + GenerateCode(src)
}
