package scenario

import (
	"fmt"

	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
)

// HaveErrorMessage succeeds when errors[i].message equals msg exactly
func HaveErrorMessage(i int, msg string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *client.Response) (bool, error) {
		if resp == nil {
			return false, fmt.Errorf("response is nil")
		}
		if i < 0 || i >= len(resp.Errors) {
			return false, nil
		}
		return resp.Errors[i].Message == msg, nil
	}).WithTemplate("Expected error messages\n{{format .Actual.Messages 1}}\n{{.To}} have at index {{.Data.Index}}\n{{format .Data.Message 1}}", map[string]any{"Index": i, "Message": msg})
}

// HaveErrorCode succeeds when errors[0] carries extensions.code == code
func HaveErrorCode(code string) types.GomegaMatcher {
	return HaveErrorCodeAt(0, code)
}

// HaveErrorCodeAt succeeds when errors[i] carries extensions.code == code
func HaveErrorCodeAt(i int, code string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *client.Response) (bool, error) {
		if resp == nil {
			return false, fmt.Errorf("response is nil")
		}
		codes := resp.Codes()
		if i < 0 || i >= len(codes) {
			return false, nil
		}
		return codes[i] == code, nil
	}).WithTemplate("Expected error codes\n{{format .Actual.Codes 1}}\n{{.To}} have at index {{.Data.Index}}\n{{format .Data.Code 1}}", map[string]any{"Index": i, "Code": code})
}

// HaveNoErrors succeeds when the errors array is absent or empty
func HaveNoErrors() types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *client.Response) (bool, error) {
		if resp == nil {
			return false, fmt.Errorf("response is nil")
		}
		return !resp.HasErrors(), nil
	}).WithTemplate("Expected GraphQL response\n{{format .Actual.Messages 1}}\n{{.To}} have no errors")
}
