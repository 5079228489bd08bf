package extraction

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/api/googleapi"
)

var _ = Describe("ClassifyError", func() {
	DescribeTable("buckets failures by cause",
		func(err error, expected Reason) {
			Expect(ClassifyError(err)).To(Equal(expected))
		},
		Entry("missing credential", ErrMissingCredential, ReasonMissingCredential),
		Entry("wrapped missing credential", fmt.Errorf("extracting: %w", ErrMissingCredential), ReasonMissingCredential),
		Entry("unsupported type", fmt.Errorf("%w: application/zip", ErrUnsupportedType), ReasonUnsupportedType),
		Entry("invalid response", fmt.Errorf("%w: no JSON object found", ErrInvalidResponse), ReasonInvalidResponse),
		Entry("permission denied status code", &googleapi.Error{Code: 403, Message: "forbidden"}, ReasonPermissionDenied),
		Entry("unauthorized status code", &googleapi.Error{Code: 401, Message: "unauthorized"}, ReasonPermissionDenied),
		Entry("quota status code", &googleapi.Error{Code: 429, Message: "too many requests"}, ReasonQuotaExceeded),
		Entry("wrapped api error", fmt.Errorf("generating content: %w", &googleapi.Error{Code: 429}), ReasonQuotaExceeded),
		Entry("grpc permission denied text", errors.New("rpc error: code = PermissionDenied desc = denied"), ReasonPermissionDenied),
		Entry("grpc resource exhausted text", errors.New("rpc error: code = ResourceExhausted desc = quota exceeded"), ReasonQuotaExceeded),
		Entry("invalid api key text", errors.New("API key not valid. Please pass a valid API key."), ReasonPermissionDenied),
		Entry("anything else", errors.New("connection reset by peer"), ReasonUnknown),
	)

	It("gives every reason a distinct human-readable message", func() {
		reasons := []Reason{
			ReasonMissingCredential,
			ReasonPermissionDenied,
			ReasonQuotaExceeded,
			ReasonUnsupportedType,
			ReasonInvalidResponse,
			ReasonUnknown,
		}
		seen := make(map[string]struct{})
		for _, r := range reasons {
			msg := r.Message()
			Expect(msg).NotTo(BeEmpty())
			Expect(seen).NotTo(HaveKey(msg))
			seen[msg] = struct{}{}
		}
	})
})
