package check

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// Phrases are the congratulation messages printed after a fully passing run.
var Phrases = []string{
	"Great job! 👾",
	"Well done! 🎉",
	"All good! 🤝",
	"Nice job! 🥳",
	"Great! 👌",
	"You are doing fine! ✌️",
	"Yeah! 😎",
	"Everything correct! 🤓",
	"Awesome! 💯",
	"Fantastic! 🚀",
	"Excellent! ✨",
}

// Phrase picks a congratulation phrase for specs. The choice is a pseudo-random
// draw seeded from the exercise name and the rendered specs, so the same input
// always yields the same phrase.
func Phrase(exercise string, specs []Spec) string {
	return Phrases[phraseIndex(exercise, specs)]
}

func phraseIndex(exercise string, specs []Spec) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seedText(exercise, specs)))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return rng.IntN(len(Phrases))
}

func seedText(exercise string, specs []Spec) string {
	var b strings.Builder
	b.WriteString(exercise)
	b.WriteString("\x00[")
	for i, s := range specs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString("]")
	return b.String()
}
