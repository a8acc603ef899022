// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package artifact inspects bundle archives before they are signed.
package artifact
