package utils_test

import (
	"context"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/app"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/ramparttest/assert"
	"github.com/rampart-io/rampart/store"
	"github.com/rampart-io/rampart/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack rampart.Handler
		tx    rampart.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&ramparttest.Handler{},
			),
			tx:   &ramparttest.Tx{Msg: &ramparttest.Msg{RoutePath: "pool/propose_tx"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "pool/propose_tx")},
		},
		"passes through error": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&ramparttest.Handler{DeliverErr: errors.ErrHuman},
			),
			tx:  &ramparttest.Tx{Msg: &ramparttest.Msg{RoutePath: "pool/propose_tx"}},
			err: errors.ErrHuman,
		},
		"broken transaction errors early": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&ramparttest.Handler{},
			),
			tx:  &ramparttest.Tx{Err: errors.ErrState},
			err: errors.ErrState,
		},
		"tags are additive": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&ramparttest.Handler{
					DeliverResult: rampart.DeliverResult{Tags: []common.KVPair{stringTag("wallet", "f00f")}},
				},
			),
			tx: &ramparttest.Tx{Msg: &ramparttest.Msg{RoutePath: "pool/sign_tx"}},
			tags: []common.KVPair{
				stringTag("wallet", "f00f"),
				stringTag(utils.ActionKey, "pool/sign_tx"),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			// we get tagged on success
			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
