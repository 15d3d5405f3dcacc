// Package translog provides the machine's append-only transaction log: an
// audit trail of every accepted command and the state it resulted in.
//
// The package separates stamping from persistence. A Recorder assigns each
// entry a UUID and timestamp and forwards it to a Storage implementation;
// two storages ship out of the box:
//
//   - MemoryStorage — in-process slice, optionally bounded
//   - RedisStorage — Redis list, for deployments that want the trail to
//     survive restarts
//
// # Usage
//
//	recorder := translog.NewRecorder(translog.NewMemoryStorage())
//	_ = recorder.Record(ctx, "insert_coin", "coin_inserted", "amount=500")
//	entries, _ := recorder.Recent(ctx, 10) // newest last
//
// Entries are never mutated or removed after append; Recent is
// non-destructive. A failed Append is the machine controller's single fatal
// error class, so storages wrap backend failures with ErrStorageUnavailable
// to keep them distinguishable from validation problems.
package translog
