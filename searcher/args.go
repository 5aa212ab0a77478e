package searcher

// Hyperparameters for MCTS

const Exploration = 1.41 // UCT exploration constant C

const DefaultGoroutines = 4
const DefaultSimulations = 10000
