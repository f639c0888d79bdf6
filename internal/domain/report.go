package domain

// VerificationStatus is the outcome of checking one sent file on the remote.
type VerificationStatus string

const (
	// VerifyPresent means the file is listed with the expected, non-zero size.
	VerifyPresent VerificationStatus = "present"
	// VerifyMissing means the file is not in the remote listing.
	VerifyMissing VerificationStatus = "missing"
	// VerifyEmpty means the file is listed with zero bytes.
	VerifyEmpty VerificationStatus = "empty"
	// VerifySizeMismatch means the remote size differs from the bytes uploaded.
	VerifySizeMismatch VerificationStatus = "size_mismatch"
	// VerifyUnverified means the remote listing itself failed.
	VerifyUnverified VerificationStatus = "unverified"
)

// Verification is the post-transfer check of one file.
type Verification struct {
	Name     string
	Status   VerificationStatus
	Size     int64
	Expected int64
}

// OK reports whether the file was found intact.
func (v Verification) OK() bool {
	return v.Status == VerifyPresent
}

// Report summarizes one sync run.
type Report struct {
	LocalCount  int
	RemoteCount int
	LedgerCount int

	// RemoteListingFailed is set when the remote set was assumed empty.
	RemoteListingFailed bool

	// DryRun is set when nothing was uploaded or recorded.
	DryRun bool

	// ToSend lists the names selected for transfer, in transfer order.
	ToSend []string

	// Sent lists the names uploaded and recorded, in transfer order.
	Sent []string

	SkippedRemote []string
	SkippedLedger []string

	// BytesSent is the sum of bytes uploaded in this run.
	BytesSent int64

	Verifications []Verification
}

// Unverified returns the verifications that did not come back present.
func (r Report) Unverified() []Verification {
	var out []Verification
	for _, v := range r.Verifications {
		if !v.OK() {
			out = append(out, v)
		}
	}
	return out
}
