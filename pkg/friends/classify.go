package friends

import (
	"strings"
)

// Verdict tells the writer what to do after a failed friendship creation.
type Verdict int

const (
	// VerdictTransient errors are retried following the backoff ladder.
	VerdictTransient Verdict = iota
	// VerdictSkip marks the row as never importable; the run goes on.
	VerdictSkip
	// VerdictAbort stops the whole run.
	VerdictAbort
)

func (v Verdict) String() string {
	switch v {
	case VerdictSkip:
		return "skip"
	case VerdictAbort:
		return "abort"
	default:
		return "transient"
	}
}

// Classification is the result of Classify.
type Classification struct {
	Verdict Verdict
	// Reason is the message for the user; empty for transient errors.
	Reason string
}

type classifierRule struct {
	signal  string
	verdict Verdict
	reason  string
}

// classifierRules matches the free text of Twitter error messages. Twitter
// may reword them at any time, so this table is the only place to update.
// {handle} is the account being followed, {owner} the authenticated one.
var classifierRules = []classifierRule{
	{
		signal:  "Cannot find specified user",
		verdict: VerdictSkip,
		reason:  "The twitter user: {handle} could not be followed - It doesn't exist anymore!",
	},
	{
		signal:  "You have been blocked",
		verdict: VerdictSkip,
		reason:  "The twitter user: {handle} could not be followed - They blocked your account from following them!",
	},
	{
		signal:  "already requested to follow",
		verdict: VerdictSkip,
		reason:  "The twitter user: {handle} could not be followed - The account is protected.",
	},
	{
		signal:  "401 (Unauthorized)",
		verdict: VerdictAbort,
		reason:  "The twitter importer application is not authorized to act on {owner}'s behalf anymore",
	},
	{
		signal:  "Invalid or expired token",
		verdict: VerdictAbort,
		reason:  "The twitter importer application is not authorized to act on {owner}'s behalf anymore",
	},
}

// Classify inspects the error returned while following handle on behalf of
// owner.
func Classify(err error, handle, owner string) Classification {
	if err == nil {
		return Classification{Verdict: VerdictTransient}
	}

	msg := err.Error()
	for _, rule := range classifierRules {
		if strings.Contains(msg, rule.signal) {
			r := strings.NewReplacer("{handle}", handle, "{owner}", owner)
			return Classification{
				Verdict: rule.verdict,
				Reason:  r.Replace(rule.reason),
			}
		}
	}

	return Classification{Verdict: VerdictTransient}
}
