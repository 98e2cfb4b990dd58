package friends_test

import (
	"errors"

	"github.com/lisanmuaddib/twfriends/pkg/friends"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	DescribeTable("maps Twitter error messages to a verdict",
		func(msg string, verdict friends.Verdict, reason string) {
			c := friends.Classify(errors.New(msg), "someone", "jack")
			Expect(c.Verdict).To(Equal(verdict))
			Expect(c.Reason).To(Equal(reason))
		},
		Entry("deleted account",
			"Twitter API returned a 404 (Not Found), Cannot find specified user.",
			friends.VerdictSkip,
			"The twitter user: someone could not be followed - It doesn't exist anymore!"),
		Entry("blocked by the account",
			"Twitter API returned a 403 (Forbidden), You have been blocked from following this account at the request of the user.",
			friends.VerdictSkip,
			"The twitter user: someone could not be followed - They blocked your account from following them!"),
		Entry("protected account",
			"Twitter API returned a 403 (Forbidden), You've already requested to follow someone.",
			friends.VerdictSkip,
			"The twitter user: someone could not be followed - The account is protected."),
		Entry("revoked token",
			"Twitter API returned a 401 (Unauthorized), Invalid or expired token.",
			friends.VerdictAbort,
			"The twitter importer application is not authorized to act on jack's behalf anymore"),
		Entry("unauthorized without token detail",
			"Twitter API returned a 401 (Unauthorized), Could not authenticate you.",
			friends.VerdictAbort,
			"The twitter importer application is not authorized to act on jack's behalf anymore"),
		Entry("rate limit",
			"Twitter API returned a 429 (Too Many Requests), Rate limit exceeded",
			friends.VerdictTransient,
			""),
		Entry("follow limit",
			"Twitter API returned a 403 (Forbidden), You are unable to follow more people at this time.",
			friends.VerdictTransient,
			""),
		Entry("network failure",
			"failed to make request: connection reset by peer",
			friends.VerdictTransient,
			""),
	)

	It("finds the signal inside wrapped errors", func() {
		inner := errors.New("Twitter API returned a 404 (Not Found), Cannot find specified user.")
		err := errors.Join(errors.New("failed to create friendship"), inner)

		Expect(friends.Classify(err, "gone", "jack").Verdict).To(Equal(friends.VerdictSkip))
	})

	It("treats a nil error as transient", func() {
		Expect(friends.Classify(nil, "x", "y").Verdict).To(Equal(friends.VerdictTransient))
	})

	It("names verdicts", func() {
		Expect(friends.VerdictSkip.String()).To(Equal("skip"))
		Expect(friends.VerdictAbort.String()).To(Equal("abort"))
		Expect(friends.VerdictTransient.String()).To(Equal("transient"))
	})
})
