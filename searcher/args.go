package searcher

// Hyperparameters for MCTS

const DefaultSimulations = 500
const DefaultMaxDepth = 20

// Discount per step between a decision and the end of its playout
const DefaultGamma = 0.99

// UCB1 exploration constant c
const DefaultExploration = 1.4

// Opponent rollout policy
const DefaultPlayProbability = 0.8
const ChallengeProbability = 0.5
