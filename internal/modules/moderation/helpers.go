package moderation

import "errors"

var (
	errTagRequired        = errors.New("at least one tag required")
	errWeightOutOfRange   = errors.New("weight must be between 1 and 10")
	errSourceNotApproved  = errors.New("cannot approve quote: its source is not approved yet")
	errQuotaExceeded      = errors.New("this source already has 3 approved quotes")
	errMergeQuota         = errors.New("cannot merge: target would end up with more than 3 approved quotes")
	errSelfMerge          = errors.New("cannot merge a source into itself")
	errTargetNameRequired = errors.New("target source name must not be empty")
	errDuplicateQuote     = errors.New("an identical quote already exists")
)
