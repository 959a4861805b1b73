package scalars

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// DateTimeLayout is the wire format of the DateTime scalar
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalDateTime marshals time.Time to GraphQL DateTime scalar
func MarshalDateTime(t time.Time) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		io.WriteString(w, strconv.Quote(t.UTC().Format(DateTimeLayout)))
	})
}

// UnmarshalDateTime unmarshals GraphQL DateTime scalar to time.Time.
// Epoch milliseconds are accepted as well as RFC3339 strings.
func UnmarshalDateTime(v interface{}) (time.Time, error) {
	switch tmp := v.(type) {
	case string:
		if ms, err := strconv.ParseInt(tmp, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		return time.Parse(time.RFC3339, tmp)
	case float64:
		return time.UnixMilli(int64(tmp)).UTC(), nil
	case int64:
		return time.UnixMilli(tmp).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse DateTime from %T", v)
}
