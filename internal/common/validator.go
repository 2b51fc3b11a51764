package common

import (
	"errors"
	"regexp"
)

var imdbTitleIDRE = regexp.MustCompile(`^tt\d+$`)

// ValidateIMDBTitleID checks if the given IMDB title ID is valid.
// It ensures the title starts with 'tt' followed by a numeric suffix.
func ValidateIMDBTitleID(ID string) error {

	if !imdbTitleIDRE.MatchString(ID) {
		return errors.New("invalid IMDB title")
	}

	return nil
}

var canonicalRatioRE = regexp.MustCompile(`^\d+\.\d{2}:1$`)

// ValidateCanonicalRatio checks that a ratio is in the canonical two-decimal
// "X.XX:1" form every record is keyed on.
func ValidateCanonicalRatio(ratio string) error {

	if !canonicalRatioRE.MatchString(ratio) {
		return errors.New("ratio not in canonical X.XX:1 form")
	}

	return nil
}
