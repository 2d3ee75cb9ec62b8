// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

var (
	ErrTransport        = errors.New("transport error")
	ErrLanguageModel    = errors.New("language model error")
	ErrToolExecution    = errors.New("tool execution error")
	ErrSerialization    = errors.New("serialization error")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrDispatcherClosed = errors.New("dispatcher is not accepting work")
	ErrInvalidTask      = errors.New("invalid scheduled task")
)
