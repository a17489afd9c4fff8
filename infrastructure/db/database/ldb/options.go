package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

// Options is a function that returns a leveldb
// opt.Options struct for opening a database.
// It's defined as a variable for the sake of testing.
var Options = func() *opt.Options {
	return &opt.Options{
		Compression:            opt.NoCompression,
		BlockCacheCapacity:     256 * opt.MiB,
		WriteBuffer:            64 * opt.MiB,
		DisableSeeksCompaction: true,
	}
}
