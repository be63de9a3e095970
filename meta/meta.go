// meta/meta.go
package meta

// SEATS defines the number of players at the table, the agent included.
const SEATS = 4

// PARTICLES defines the belief population size.
const PARTICLES = 64

// MAX_STEPS defines how many transitions a round may take before it is abandoned.
const MAX_STEPS = 2000

// NUM_GAMES defines the number of rounds per agent configuration.
const NUM_GAMES = 20
