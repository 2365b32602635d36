package delegation

import (
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPolicyModel(t *testing.T) {
	Convey("Given a wallet with a delegation policy", t, func() {
		wallet := ramparttest.NewCaller("wallet").Address()
		library := ramparttest.NewCaller("library").Address()
		dex := ramparttest.NewCaller("dex").Address()

		policy := Policy{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   wallet,
			Enabled:  true,
			Targets:  []rampart.Address{library},
		}

		Convey("the policy validates", func() {
			So(policy.Validate(), ShouldBeNil)

			Convey("also without any target pinned", func() {
				policy.Targets = nil
				So(policy.Validate(), ShouldBeNil)
			})
		})

		Convey("validation rejects broken content", func() {
			Convey("missing metadata", func() {
				policy.Metadata = nil
				So(errors.ErrMetadata.Is(policy.Validate()), ShouldBeTrue)
			})
			Convey("truncated wallet address", func() {
				policy.Wallet = wallet[:6]
				So(errors.ErrInput.Is(policy.Validate()), ShouldBeTrue)
			})
			Convey("malformed target address", func() {
				policy.Targets = append(policy.Targets, library[:3])
				So(errors.ErrInput.Is(policy.Validate()), ShouldBeTrue)
			})
			Convey("a target listed twice", func() {
				policy.Targets = append(policy.Targets, library)
				So(errors.ErrDuplicate.Is(policy.Validate()), ShouldBeTrue)
			})
		})

		Convey("target membership is exact", func() {
			So(policy.HasTarget(library), ShouldBeTrue)
			So(policy.HasTarget(dex), ShouldBeFalse)
			So(policy.HasTarget(nil), ShouldBeFalse)

			Convey("an empty list contains nothing", func() {
				policy.Targets = nil
				So(policy.HasTarget(library), ShouldBeFalse)
			})
		})

		Convey("the bucket stores one policy per wallet", func() {
			db := store.MemStore()
			migration.MustInitPkg(db, packageName)
			bucket := NewBucket()

			So(bucket.Put(db, &policy), ShouldBeNil)

			loaded, err := bucket.GetPolicy(db, wallet)
			So(err, ShouldBeNil)
			So(loaded.Enabled, ShouldBeTrue)
			So(len(loaded.Targets), ShouldEqual, 1)
			So(loaded.Targets[0].Equals(library), ShouldBeTrue)

			Convey("another wallet has no policy", func() {
				_, err := bucket.GetPolicy(db, dex)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})

			Convey("a second put replaces the first", func() {
				policy.Enabled = false
				So(bucket.Put(db, &policy), ShouldBeNil)

				loaded, err := bucket.GetPolicy(db, wallet)
				So(err, ShouldBeNil)
				So(loaded.Enabled, ShouldBeFalse)
			})
		})
	})
}
