// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metrics

import "errors"

// ErrRegister is returned when a collector cannot be registered.
var ErrRegister = errors.New("metrics: register failed")
