// Package seed provides demo form designs for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
)

// accountSearch is a typical back-office listing page: a searchable account
// table with advanced-search filters and a conditionally hidden field.
const accountSearch = `{
	"form_id": "ACCT_SEARCH",
	"info": {
		"data": "wf.account.search",
		"lang": {"title": {"en": "Account enquiry", "vi": "Tra cứu tài khoản", "la": "ສອບຖາມບັນຊີ"}}
	},
	"list_layout": [{
		"list_view": [
			{
				"code": "filters",
				"isBox": "true",
				"lang": {"title": {"en": "Search filters", "vi": "Bộ lọc tìm kiếm"}},
				"list_input": [
					{"inputtype": "cTextInputAdvancedSearch",
					 "default": {"code": "accountno", "name": "Account No", "class": "col-md-4"},
					 "config": {"structable_read": "account.accountno"}},
					{"inputtype": "jSelectAdvancedSearch",
					 "default": {"code": "accounttype", "name": "Account Type", "class": "col-md-4"},
					 "config": {"data_mode": "cdlist", "isHasDataNull": "true"},
					 "cdlist": {"cdgrp": "ACT", "cdname": "ACCTYPE"}},
					{"inputtype": "cDate",
					 "default": {"code": "opendate", "name": "Open Date", "class": "col-md-4"},
					 "config": {}}
				]
			},
			{
				"code": "results",
				"list_input": [
					{"inputtype": "cTableDefault",
					 "default": {"code": "accounts", "name": "Accounts"},
					 "config": {}}
				]
			}
		]
	}]
}`

// depositDetail shows tabs, a conditional visibility rule and a raw-data
// editor for the record's backing document.
const depositDetail = `{
	"form_id": "DEPOSIT_DETAIL",
	"info": {
		"data": "wf.deposit.view",
		"lang": {"title": {"en": "Term deposit", "vi": "Tiền gửi có kỳ hạn"}}
	},
	"list_layout": [{
		"list_view": [
			{
				"code": "general",
				"isBox": "true",
				"lang": {"title": {"en": "General"}},
				"list_input": [
					{"inputtype": "cTextInput",
					 "default": {"code": "depositno", "name": "Deposit No", "class": "col-md-6"},
					 "config": {"structable_read": "deposit.depositno"}, "iskey": true},
					{"inputtype": "jSelect",
					 "default": {"code": "status", "name": "Status", "class": "col-md-6"},
					 "config": {"data_mode": "cdlist"},
					 "cdlist": {"cdgrp": "DEP", "cdname": "STATUS"}},
					{"inputtype": "cTextInput",
					 "default": {"code": "closereason", "name": "Close Reason", "class": "col-md-6"},
					 "config": {}}
				]
			},
			{
				"code": "document",
				"isTab": "true",
				"lang": {"title": {"en": "Document", "vi": "Chứng từ"}},
				"list_input": [
					{"inputtype": "jSONEditor",
					 "default": {"code": "rawdoc", "name": "Raw Document"},
					 "config": {"get_data_format": "json"}}
				]
			}
		]
	}],
	"list_rule": [
		{"code": "visibility",
		 "config": {"component_result": "closereason", "component_event": "on_change", "visible": "false",
		            "component": "status", "component_value": "OPEN"}}
	]
}`

var demoDesigns = map[string]string{
	"ACCT_SEARCH":    accountSearch,
	"DEPOSIT_DETAIL": depositDetail,
}

// Designs stores the demo designs unless the store already holds any. The
// check keeps seeding idempotent across restarts.
func Designs(ctx context.Context, store designstore.Store) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("checking designs: %w", err)
	}
	if len(existing) > 0 {
		logrus.WithField("count", len(existing)).Info("designs already seeded, skipping")
		return nil
	}

	for formID, design := range demoDesigns {
		if err := store.Put(ctx, formID, []byte(design)); err != nil {
			return fmt.Errorf("seeding design %s: %w", formID, err)
		}
	}
	logrus.WithField("count", len(demoDesigns)).Info("seeded demo designs")
	return nil
}
