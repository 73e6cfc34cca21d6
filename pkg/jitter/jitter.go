// Package jitter добавляет случайность в периодические интервалы,
// чтобы несколько реплик не опрашивали зависимости синхронно.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	defer randMutex.Unlock()
	return DurationWithSeed(d, jitterFactor, globalRand)
}

// DurationWithSeed делает то же, что Duration, но с переданным генератором.
func DurationWithSeed(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	if d <= 0 || jitterFactor <= 0 {
		return d
	}

	return d + time.Duration(rng.Float64()*jitterFactor*float64(d))
}
