// internal/game/words.go
package game

// wordPool is the built-in vocabulary boards are dealt from. Words must be
// distinct; Generate samples without replacement.
var wordPool = []string{
	"ocean", "mountain", "shadow", "piano", "dragon", "bridge", "castle",
	"rocket", "mirror", "forest", "anchor", "circus", "diamond", "engine",
	"feather", "glacier", "harbor", "island", "jungle", "kettle", "lantern",
	"market", "needle", "orbit", "palace", "quartz", "river", "saddle",
	"temple", "umbrella", "volcano", "whistle", "yacht", "zebra", "armor",
	"beacon", "canyon", "desert", "ember", "falcon", "garden", "hammer",
	"ivory", "jacket", "knight", "ladder", "magnet", "nectar", "opera",
	"parrot", "quiver", "ribbon", "spider", "tunnel", "utopia", "violin",
	"wagon", "cradle", "python", "meadow", "comet", "turbine", "velvet",
	"walnut", "lighthouse", "compass", "thunder", "crystal", "harvest",
	"pyramid", "scholar", "tornado", "vessel", "willow", "blizzard",
	"cathedral", "dolphin", "eclipse", "fortress", "gondola", "horizon",
	"iceberg", "javelin", "kingdom", "labyrinth", "monsoon", "nomad",
	"oasis", "pendulum", "quarry", "reef", "sentinel", "tide", "unicorn",
	"vortex", "wharf", "zeppelin", "atlas", "bazaar", "citadel", "dynamo",
}
