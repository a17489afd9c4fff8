package serialization

import (
	"bytes"
	"io"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// WriteHeaderMiningFields writes every header field that is covered by the
// proof of work, i.e. everything except the pow data itself.
func WriteHeaderMiningFields(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.Version, header.Height, &header.PrevHash, header.Timestamp,
		&header.OutputMR, &header.KernelMR, &header.TotalKernelOffset, header.Nonce,
		header.Pow.PowAlgo, header.Pow.TargetDifficulty)
}

// WriteHeader writes the full canonical encoding of header
func WriteHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	err := WriteHeaderMiningFields(w, header)
	if err != nil {
		return err
	}
	return WriteElement(w, header.Pow.PowData)
}

// ReadHeader reads a header written by WriteHeader
func ReadHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.Version, &header.Height, &header.PrevHash, &header.Timestamp,
		&header.OutputMR, &header.KernelMR, &header.TotalKernelOffset, &header.Nonce,
		&header.Pow.PowAlgo, &header.Pow.TargetDifficulty, &header.Pow.PowData)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeHeader returns the canonical encoding of header
func SerializeHeader(header *externalapi.DomainBlockHeader) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WriteHeader(buf, header)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeHeader decodes bytes produced by SerializeHeader
func DeserializeHeader(headerBytes []byte) (*externalapi.DomainBlockHeader, error) {
	reader := bytes.NewReader(headerBytes)
	header, err := ReadHeader(reader)
	if err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after header", reader.Len())
	}
	return header, nil
}

// SerializeUTXO returns the storage encoding of utxo
func SerializeUTXO(utxo *externalapi.UTXO) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WriteElements(buf, utxo.Features.Flags, utxo.Features.Maturity, &utxo.Commitment, utxo.Script)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeUTXO decodes bytes produced by SerializeUTXO
func DeserializeUTXO(utxoBytes []byte) (*externalapi.UTXO, error) {
	reader := bytes.NewReader(utxoBytes)
	utxo := &externalapi.UTXO{}
	err := ReadElements(reader, &utxo.Features.Flags, &utxo.Features.Maturity, &utxo.Commitment, &utxo.Script)
	if err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after utxo", reader.Len())
	}
	return utxo, nil
}

// SerializeKernel returns the storage encoding of kernel
func SerializeKernel(kernel *externalapi.Kernel) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WriteElements(buf, kernel.Features, kernel.Fee, kernel.LockHeight, &kernel.Excess, kernel.ExcessSig)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeKernel decodes bytes produced by SerializeKernel
func DeserializeKernel(kernelBytes []byte) (*externalapi.Kernel, error) {
	reader := bytes.NewReader(kernelBytes)
	kernel := &externalapi.Kernel{}
	err := ReadElements(reader, &kernel.Features, &kernel.Fee, &kernel.LockHeight, &kernel.Excess, &kernel.ExcessSig)
	if err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after kernel", reader.Len())
	}
	return kernel, nil
}
