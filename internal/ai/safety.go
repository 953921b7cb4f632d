package ai

import "regexp"

// dangerousPatterns is a shallow denylist. It is a best-effort filter against
// obvious prompt-injection phrasing, not a security boundary: matching is by
// substring, so "rooftop bar" is rejected and paraphrased attacks are not.
var dangerousPatterns = regexp.MustCompile(`(?i)(ignore|simulate|admin|root|flag|token|--|;|password)`)

// IsSafeInput reports whether prompt passes the denylist.
func IsSafeInput(prompt string) bool {
	return !dangerousPatterns.MatchString(prompt)
}
