package buildinfo

const Graffiti = " _           _       _     _   \n(_)_ __  ___(_) __ _| |__ | |_ \n| | '_ \\/ __| |/ _` | '_ \\| __|\n| | | | \\__ \\ | (_| | | | | |_ \n|_|_| |_|___/_|\\__, |_| |_|\\__|\n               |___/           \n\n"

// Overridden at link time with -ldflags "-X".
var (
	BuildTag string = "v0.0.0"
	Name     string = "INSIGHT"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
