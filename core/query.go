package core

import "net/url"

// EncodeQuery URL-encodes the given parameters, dropping entries with empty
// values. The backend treats "search=" differently from an absent search
// parameter on some endpoints, so empty filters must never be emitted.
func EncodeQuery(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}
