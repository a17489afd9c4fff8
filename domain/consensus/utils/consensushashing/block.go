package consensushashing

import (
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/hashes"
	"github.com/Grrwahrr/tari/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the given header's hash
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serialization.WriteHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is an oversized pow data field
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}
