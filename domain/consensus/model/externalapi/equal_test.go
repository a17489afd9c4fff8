package externalapi

import "testing"

func TestDomainBlockHeaderCloneEqual(t *testing.T) {
	header := &DomainBlockHeader{
		Version:   1,
		Height:    42,
		PrevHash:  DomainHash{1},
		Timestamp: 1000,
		Nonce:     7,
		Pow: ProofOfWork{
			PowAlgo:          PowAlgorithmSha3,
			TargetDifficulty: 100,
			PowData:          []byte{1, 2, 3},
		},
	}

	clone := header.Clone()
	if !header.Equal(clone) {
		t.Fatalf("TestDomainBlockHeaderCloneEqual: clone is not equal to the original")
	}

	clone.Pow.PowData[0] = 9
	if header.Pow.PowData[0] != 1 {
		t.Fatalf("TestDomainBlockHeaderCloneEqual: modifying the clone changed the original")
	}
	if header.Equal(clone) {
		t.Fatalf("TestDomainBlockHeaderCloneEqual: headers with different pow data are equal")
	}

	tests := []struct {
		name   string
		modify func(h *DomainBlockHeader)
	}{
		{"height", func(h *DomainBlockHeader) { h.Height++ }},
		{"timestamp", func(h *DomainBlockHeader) { h.Timestamp++ }},
		{"algo", func(h *DomainBlockHeader) { h.Pow.PowAlgo = PowAlgorithmBlake }},
		{"target", func(h *DomainBlockHeader) { h.Pow.TargetDifficulty++ }},
		{"offset", func(h *DomainBlockHeader) { h.TotalKernelOffset[0] = 1 }},
		{"prev hash", func(h *DomainBlockHeader) { h.PrevHash[5] = 1 }},
	}
	for _, test := range tests {
		modified := header.Clone()
		test.modify(modified)
		if header.Equal(modified) {
			t.Errorf("TestDomainBlockHeaderCloneEqual: headers differing in %s are equal", test.name)
		}
	}

	var nilHeader *DomainBlockHeader
	if !nilHeader.Equal(nil) || header.Equal(nil) {
		t.Fatalf("TestDomainBlockHeaderCloneEqual: unexpected nil comparison result")
	}
}

func TestPowAlgorithmString(t *testing.T) {
	tests := []struct {
		algo     PowAlgorithm
		expected string
		known    bool
	}{
		{PowAlgorithmBlake, "Blake", true},
		{PowAlgorithmSha3, "Sha3", true},
		{PowAlgorithm(7), "Unknown(7)", false},
	}
	for _, test := range tests {
		if test.algo.String() != test.expected {
			t.Errorf("TestPowAlgorithmString: expected %s but got %s", test.expected, test.algo)
		}
		if test.algo.IsKnown() != test.known {
			t.Errorf("TestPowAlgorithmString: expected IsKnown of %s to be %t", test.algo, test.known)
		}
	}
}

func TestDomainHashFromString(t *testing.T) {
	hashString := "0100000000000000000000000000000000000000000000000000000000000002"
	hash, err := NewDomainHashFromString(hashString)
	if err != nil {
		t.Fatalf("TestDomainHashFromString: NewDomainHashFromString unexpectedly failed: %s", err)
	}
	if hash[0] != 1 || hash[31] != 2 {
		t.Fatalf("TestDomainHashFromString: unexpected hash bytes %s", hash)
	}
	if hash.String() != hashString {
		t.Fatalf("TestDomainHashFromString: expected %s but got %s", hashString, hash)
	}

	_, err = NewDomainHashFromString("abcd")
	if err == nil {
		t.Fatalf("TestDomainHashFromString: expected an error for a short hash string")
	}
}
