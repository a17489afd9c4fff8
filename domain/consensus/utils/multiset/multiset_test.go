package multiset

import "testing"

func TestMultisetOrderIndependence(t *testing.T) {
	a := New()
	a.Add([]byte("utxo-1"))
	a.Add([]byte("utxo-2"))
	a.Add([]byte("kernel-1"))

	b := New()
	b.Add([]byte("kernel-1"))
	b.Add([]byte("utxo-2"))
	b.Add([]byte("utxo-1"))

	if !a.Hash().Equal(b.Hash()) {
		t.Fatalf("TestMultisetOrderIndependence: hashes differ: %s != %s", a.Hash(), b.Hash())
	}
}

func TestMultisetRemove(t *testing.T) {
	empty := New().Hash()

	ms := New()
	ms.Add([]byte("utxo-1"))
	if ms.Hash().Equal(empty) {
		t.Fatalf("TestMultisetRemove: adding an element did not change the hash")
	}
	ms.Remove([]byte("utxo-1"))
	if !ms.Hash().Equal(empty) {
		t.Fatalf("TestMultisetRemove: removing the only element did not restore the empty hash")
	}
}

func TestMultisetSerialization(t *testing.T) {
	ms := New()
	ms.Add([]byte("utxo-1"))
	ms.Add([]byte("kernel-1"))

	deserialized, err := FromBytes(ms.Serialize())
	if err != nil {
		t.Fatalf("TestMultisetSerialization: FromBytes: %s", err)
	}
	if !deserialized.Hash().Equal(ms.Hash()) {
		t.Fatalf("TestMultisetSerialization: deserialized hash %s != %s", deserialized.Hash(), ms.Hash())
	}

	deserialized.Add([]byte("utxo-2"))
	if deserialized.Hash().Equal(ms.Hash()) {
		t.Fatalf("TestMultisetSerialization: modifying a deserialized multiset changed the original")
	}

	_, err = FromBytes([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("TestMultisetSerialization: expected an error for a short serialization")
	}
}
