package scalars

import (
	"errors"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

// MarshalObjectID marshals a hex id to the ObjectID scalar
func MarshalObjectID(id string) graphql.Marshaler {
	return graphql.MarshalString(id)
}

// UnmarshalObjectID accepts only 24-hex-character strings
func UnmarshalObjectID(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok || !entities.IsObjectID(s) {
		return "", errors.New(scenario.InvalidObjectIDReason(v))
	}
	return strings.ToLower(s), nil
}
