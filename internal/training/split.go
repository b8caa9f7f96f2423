package training

import (
	"math"
	"math/rand/v2"
)

// TrainTestSplit baraja los índices 0..n-1 con seed fija y separa
// ceil(testFraction*n) para test. Siempre deja al menos una fila para entrenar.
func TrainTestSplit(n int, testFraction float64, seed uint64) (train, test []int) {
	if n <= 0 {
		return nil, nil
	}
	perm := rand.New(rand.NewPCG(seed, 0)).Perm(n)

	nTest := int(math.Ceil(testFraction * float64(n)))
	nTest = max(0, min(nTest, n-1))

	return perm[nTest:], perm[:nTest]
}
