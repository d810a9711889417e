package archive

import "github.com/sifthq/minthook/pkg/id"

var (
	eventPrefix    = []byte("ev/")
	analysisPrefix = []byte("an/")
)

func eventKey(recordID id.ID) []byte {
	return append(append([]byte{}, eventPrefix...), recordID.Bytes()...)
}

func analysisKey(recordID id.ID) []byte {
	return append(append([]byte{}, analysisPrefix...), recordID.Bytes()...)
}

// upperBound returns the exclusive upper bound for a prefix scan.
func upperBound(prefix []byte) []byte {
	return append(append([]byte{}, prefix...), 0xFF)
}
