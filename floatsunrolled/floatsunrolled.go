// floatsunrolled is inspired by the SIMD blog post
// https://github.com/camdencheek/simd_blog/blob/main/main.go
//
// The kernels here accept slices of any length. The bulk of the slice is processed in
// batches of UnrollBatch with independent accumulators and the remainder is folded in
// with a scalar loop.
package floatsunrolled

import (
	"errors"
	"math"
)

const UnrollBatch = 4

var (
	ErrSliceLengthMismatch       = errors.New("slices must have equal lengths")
	ErrOutputSliceLengthMismatch = errors.New("output slice length not the same as input")
)

func bulk(n int) int {
	return n - n%UnrollBatch
}

// Sum returns the sum of all elements in s
func Sum(s []float64) float64 {
	var s0, s1, s2, s3 float64
	end := bulk(len(s))
	for i := 0; i < end; i += UnrollBatch {
		sTmp := s[i : i+UnrollBatch : i+UnrollBatch]
		s0 += sTmp[0]
		s1 += sTmp[1]
		s2 += sTmp[2]
		s3 += sTmp[3]
	}
	sum := s0 + s1 + s2 + s3
	for i := end; i < len(s); i++ {
		sum += s[i]
	}
	return sum
}

// SumSq returns the sum of squares of s, i.e. the dot product of s with itself
func SumSq(s []float64) float64 {
	return Dot(s, s)
}

// SumAbs returns the sum of absolute values of s
func SumAbs(s []float64) float64 {
	var s0, s1, s2, s3 float64
	end := bulk(len(s))
	for i := 0; i < end; i += UnrollBatch {
		sTmp := s[i : i+UnrollBatch : i+UnrollBatch]
		s0 += math.Abs(sTmp[0])
		s1 += math.Abs(sTmp[1])
		s2 += math.Abs(sTmp[2])
		s3 += math.Abs(sTmp[3])
	}
	sum := s0 + s1 + s2 + s3
	for i := end; i < len(s); i++ {
		sum += math.Abs(s[i])
	}
	return sum
}

func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(ErrSliceLengthMismatch)
	}

	var s0, s1, s2, s3 float64
	end := bulk(len(a))
	for i := 0; i < end; i += UnrollBatch {
		aTmp := a[i : i+UnrollBatch : i+UnrollBatch]
		bTmp := b[i : i+UnrollBatch : i+UnrollBatch]
		s0 += aTmp[0] * bTmp[0]
		s1 += aTmp[1] * bTmp[1]
		s2 += aTmp[2] * bTmp[2]
		s3 += aTmp[3] * bTmp[3]
	}
	sum := s0 + s1 + s2 + s3
	for i := end; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// SubTo writes s - t into dst, allocating dst if nil
func SubTo(dst, s, t []float64) []float64 {
	if len(s) != len(t) {
		panic(ErrSliceLengthMismatch)
	}

	if dst == nil {
		dst = make([]float64, len(s))
	} else if len(dst) != len(s) {
		panic(ErrOutputSliceLengthMismatch)
	}

	end := bulk(len(s))
	for i := 0; i < end; i += UnrollBatch {
		dstTmp := dst[i : i+UnrollBatch : i+UnrollBatch]
		sTmp := s[i : i+UnrollBatch : i+UnrollBatch]
		tTmp := t[i : i+UnrollBatch : i+UnrollBatch]
		dstTmp[0] = sTmp[0] - tTmp[0]
		dstTmp[1] = sTmp[1] - tTmp[1]
		dstTmp[2] = sTmp[2] - tTmp[2]
		dstTmp[3] = sTmp[3] - tTmp[3]
	}
	for i := end; i < len(s); i++ {
		dst[i] = s[i] - t[i]
	}

	return dst
}
