package api

import (
	"strings"

	"github.com/jmagar/panopto-cli/internal/model"
)

// unauthorizedMarker is the ErrorMessage substring Panopto uses when the
// caller lacks an authenticated session.
const unauthorizedMarker = "Unauthorized"

// Classify inspects the error envelope of a decoded response. It returns nil
// when the response carries no error code, otherwise a *model.DeliveryError.
// A zero ErrorCode counts as no error.
func Classify(fields model.ErrorFields) error {
	if fields.ErrorCode == nil || *fields.ErrorCode == 0 {
		return nil
	}
	msg := model.StringValue(fields.ErrorMessage)
	if strings.Contains(msg, unauthorizedMarker) {
		return &model.DeliveryError{Kind: model.KindAuthRequired, Code: *fields.ErrorCode, Message: msg}
	}
	return &model.DeliveryError{Kind: model.KindAPIError, Code: *fields.ErrorCode, Message: msg}
}
