// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stacklok/prefs/pkg/coordinator"
	"github.com/stacklok/prefs/pkg/portable"
	"github.com/stacklok/prefs/pkg/settings"
)

// Message turns an error from the settings engine into a sentence for the user.
// Errors outside the engine's taxonomy are shown as is.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		unknownSetting *settings.UnknownSettingError
		mismatch       *settings.TypeMismatchError
		outOfRange     *settings.RangeError
		unknownKeys    *portable.UnknownKeysError
		malformed      *portable.MalformedPayloadError
		sourceRead     *portable.SourceReadError
		storeErr       *coordinator.StoreError
	)

	switch {
	case errors.As(err, &unknownKeys):
		return fmt.Sprintf("The import was rejected because it contains unknown settings: %s.",
			strings.Join(unknownKeys.Keys, ", "))
	case errors.As(err, &malformed):
		return "The import was rejected because the file is not a valid settings export."
	case errors.As(err, &sourceRead):
		return fmt.Sprintf("The file %s could not be read.", sourceRead.Path)
	case errors.As(err, &unknownSetting):
		return fmt.Sprintf("%q is not a known setting.", unknownSetting.Name)
	case errors.As(err, &mismatch):
		return fmt.Sprintf("%q expects a %s value.", mismatch.Name, mismatch.Want)
	case errors.As(err, &outOfRange):
		return fmt.Sprintf("%q must be between %d and %d.", outOfRange.Name, outOfRange.Min, outOfRange.Max)
	case errors.As(err, &storeErr):
		if storeErr.Op == "replace" {
			return "Settings were reset to their defaults but could not be saved."
		}
		return fmt.Sprintf("The change to %q could not be saved.", storeErr.Name)
	default:
		return err.Error()
	}
}
