package random

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// ReferralCodeLength is the fixed length of referral codes assigned at registration.
const ReferralCodeLength = 8

// Code returns a random string of n characters over a 64-symbol alphabet.
func Code(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// ReferralCode returns a fresh 8-character referral code.
func ReferralCode() string {
	return Code(ReferralCodeLength)
}
