// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws publishes written report files to S3 using the AWS SDK v2
// default credential chain.
package aws
