//nolint
package store

import "github.com/solpay/solpay"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = solpay.ReadOnlyKVStore
type SetDeleter = solpay.SetDeleter
type KVStore = solpay.KVStore
type Batch = solpay.Batch
type Iterator = solpay.Iterator
type CacheableKVStore = solpay.CacheableKVStore
type KVCacheWrap = solpay.KVCacheWrap
type CommitKVStore = solpay.CommitKVStore
type CommitID = solpay.CommitID
type Model = solpay.Model
