// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package analyticsui is the bubbletea analytics view: KPI cards from
// the metrics summary, severity and category bar charts, trend
// sparklines, conversation volumes, and the derived insight banners.
// The summary and trends endpoints load independently so one failing
// does not blank the other's charts.
package analyticsui
