package ecc

import (
	"math/big"
	"runtime"
)

// ZeroizeBytes overwrites buf with zeros. runtime.KeepAlive keeps the
// stores from being eliminated (golang/go#33325). Copies made elsewhere,
// for example by the garbage collector, are out of reach.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// ZeroizeInt clears the words backing x and sets it to zero. Use it on
// scalars once a multiplication has finished with them.
func ZeroizeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	x.SetInt64(0)
}

// ZeroizeInts clears each of xs.
func ZeroizeInts(xs ...*big.Int) {
	for _, x := range xs {
		ZeroizeInt(x)
	}
}
