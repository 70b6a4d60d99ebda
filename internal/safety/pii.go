package safety

import "regexp"

const (
	PIICreditCard = "credit_card"
	PIISSN        = "ssn"
	PIIPhone      = "phone"
	PIIEmail      = "email"
)

var piiPatterns = []struct {
	category string
	re       *regexp.Regexp
}{
	{PIICreditCard, regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
	{PIISSN, regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`)},
	{PIIPhone, regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)},
	{PIIEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)},
}

type PIIDetection struct {
	Found      bool     `json:"found"`
	Categories []string `json:"categories"`
}

// DetectPII reports which personal-data categories appear in text. Detection
// never blocks a turn; callers log it.
func DetectPII(text string) PIIDetection {
	cats := []string{}
	for _, p := range piiPatterns {
		if p.re.MatchString(text) {
			cats = append(cats, p.category)
		}
	}
	return PIIDetection{Found: len(cats) > 0, Categories: cats}
}
