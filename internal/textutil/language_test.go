package textutil

import "testing"

func TestIsLanguageToken(t *testing.T) {
	accepted := []string{"en", "es", "eng", "spa", "de", "pol"}
	for _, token := range accepted {
		if !IsLanguageToken(token) {
			t.Errorf("%q should be accepted as a language token", token)
		}
	}
	rejected := []string{"x", "1080p", "forced1", "dv", "hd", "abcdef", ""}
	for _, token := range rejected {
		if IsLanguageToken(token) {
			t.Errorf("%q should be rejected", token)
		}
	}
}
