package apperror_test

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chaudl113/uptime-web-api/pkg/apperror"
)

var _ = Describe("Error", func() {
	It("formats op and wrapped error", func() {
		err := apperror.New(apperror.Dependency, "service.cycle.run", "store unavailable", errors.New("connection refused"))
		Expect(err.Error()).To(Equal("service.cycle.run: connection refused"))
		Expect(err.ClientMessage()).To(Equal("store unavailable"))
	})

	It("prefers the client message when present", func() {
		err := &apperror.Error{Kind: apperror.Conflict, Op: "service.cycle.run", Message: "cycle already running"}
		Expect(err.ClientMessage()).To(Equal("cycle already running"))
		Expect(err.Error()).To(Equal("service.cycle.run: cycle already running"))
	})

	It("finds the kind through wrapping", func() {
		inner := &apperror.Error{Kind: apperror.NotFound, Op: "repo.settings.get"}
		wrapped := fmt.Errorf("load settings: %w", inner)

		Expect(apperror.IsKind(wrapped, apperror.NotFound)).To(BeTrue())
		Expect(apperror.IsKind(wrapped, apperror.Conflict)).To(BeFalse())
		Expect(apperror.IsKind(errors.New("plain"), apperror.NotFound)).To(BeFalse())
	})

	DescribeTable("HTTPStatus",
		func(err error, status int) {
			Expect(apperror.HTTPStatus(err)).To(Equal(status))
		},
		Entry("invalid input", &apperror.Error{Kind: apperror.InvalidInput}, http.StatusBadRequest),
		Entry("conflict", &apperror.Error{Kind: apperror.Conflict}, http.StatusConflict),
		Entry("unauthorised", &apperror.Error{Kind: apperror.Unauthorised}, http.StatusUnauthorized),
		Entry("dependency", &apperror.Error{Kind: apperror.Dependency}, http.StatusInternalServerError),
		Entry("foreign error", errors.New("boom"), http.StatusInternalServerError),
	)
})
