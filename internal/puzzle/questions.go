package puzzle

// DefaultQuestions is the fixed word set for one play-through. Each
// question asks the child to assemble the animal name from scrambled
// letters.
var DefaultQuestions = []string{"dog", "cat", "tiger", "zebra", "monkey", "horse"}
