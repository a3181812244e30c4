package utils

import (
	"math/rand"
	"strconv"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

const idLetters = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomID returns a short random identifier for public post/comment ids.
func RandomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idLetters[rand.Intn(len(idLetters))]
	}
	return string(b)
}
