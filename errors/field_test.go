package errors

import (
	"testing"
)

func TestFieldNil(t *testing.T) {
	if err := Field("Name", nil, "no error"); err != nil {
		t.Fatalf("a nil error must not be converted into a field error: %+v", err)
	}
	var nilErr *wrappedError
	if err := Field("Name", nilErr, "no error"); err != nil {
		t.Fatalf("a nil error implementation must not be converted: %+v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		err       error
		fieldName string
		wantCnt   int
	}{
		"nil error": {
			err:       nil,
			fieldName: "Wallet",
			wantCnt:   0,
		},
		"not a field error": {
			err:       ErrInput,
			fieldName: "Wallet",
			wantCnt:   0,
		},
		"a matching field error": {
			err:       Field("Wallet", ErrEmpty, ""),
			fieldName: "Wallet",
			wantCnt:   1,
		},
		"a field error for another field": {
			err:       Field("Payee", ErrEmpty, ""),
			fieldName: "Wallet",
			wantCnt:   0,
		},
		"a collection with a single match": {
			err: Append(
				Field("Wallet", ErrEmpty, ""),
				Field("Payee", ErrInput, "not an address"),
			),
			fieldName: "Payee",
			wantCnt:   1,
		},
		"a collection with multiple matches": {
			err: Append(
				Field("Payee", ErrEmpty, ""),
				Field("Payee", ErrInput, "not an address"),
				Field("Wallet", ErrEmpty, ""),
			),
			fieldName: "Payee",
			wantCnt:   2,
		},
		"a wrapped field error": {
			err:       Wrap(Field("Wallet", ErrEmpty, ""), "cannot propose"),
			fieldName: "Wallet",
			wantCnt:   1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			errs := FieldErrors(tc.err, tc.fieldName)
			if len(errs) != tc.wantCnt {
				t.Fatalf("want %d errors, got %d: %q", tc.wantCnt, len(errs), errs)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := Field("ContentHash", ErrInput, "must be %d bytes", 32)
	const want = `field "ContentHash": must be 32 bytes: invalid input`
	if got := err.Error(); got != want {
		t.Fatalf("unexpected message: %q", got)
	}

	bare := Field("ContentHash", ErrEmpty, "")
	const wantBare = `field "ContentHash": value is empty`
	if got := bare.Error(); got != wantBare {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestAppendFieldCollectsValidationErrors(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Metadata", ErrMetadata.New("no metadata"))
	errs = AppendField(errs, "Wallet", nil)
	errs = AppendField(errs, "Signer", ErrEmpty)

	if n := len(FieldErrors(errs, "Metadata")); n != 1 {
		t.Fatalf("want one Metadata error, got %d", n)
	}
	if n := len(FieldErrors(errs, "Wallet")); n != 0 {
		t.Fatalf("want no Wallet error, got %d", n)
	}
	if n := len(FieldErrors(errs, "Signer")); n != 1 {
		t.Fatalf("want one Signer error, got %d", n)
	}
}
