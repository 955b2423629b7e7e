package main

import (
	"flag"
	"log"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/mitchellh/go-wordwrap"
)

const terminalWidth = 100

// wrap renders a command's output, wrapping each line to the terminal.
func wrap(f func(args []string) (string, error)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		out, err := f(c.Args)
		if err != nil {
			c.Printf("Error: %s\n", err)
			return
		}
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = wordwrap.WrapString(line, terminalWidth)
		}
		c.Println(strings.Join(lines, "\n"))
	}
}

func main() {
	mapFile := flag.String("map", "", "Optional road map (.map) or node-link (.json) file to load at startup")
	flag.Parse()

	e := newExplorer()
	if *mapFile != "" {
		if _, err := e.load([]string{*mapFile}); err != nil {
			log.Fatalf("failed to load map: %v", err)
		}
	}

	shell := ishell.New()
	shell.Println("Road graph explorer. Type 'help' for commands.")

	shell.AddCmd(&ishell.Cmd{
		Name: "load",
		Help: "<file> - add the roads of a .map or node-link .json file",
		Func: wrap(e.load),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "vertex",
		Help: "<lat> <lon> - add an intersection",
		Func: wrap(e.vertex),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "edge",
		Help: "<lat1> <lon1> <lat2> <lon2> <length> [name] [category] - add a road segment",
		Func: wrap(e.edge),
	})

	routeCmd := &ishell.Cmd{
		Name: "route",
		Help: "<bfs|dijkstra|astar> <lat1> <lon1> <lat2> <lon2> - find a path",
		Func: wrap(e.route),
	}
	routeCmd.LongHelp = "Syntax: route <strategy> <lat1> <lon1> <lat2> <lon2>\n\n"
	routeCmd.LongHelp += "bfs finds the path with the fewest road segments, dijkstra and astar the\n"
	routeCmd.LongHelp += "path with the smallest total length. Both endpoints must be intersections."
	shell.AddCmd(routeCmd)

	shell.AddCmd(&ishell.Cmd{
		Name: "trace",
		Help: "same as route, also listing every point the search visited",
		Func: wrap(e.trace),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "stats",
		Help: "show vertex and edge counts",
		Func: wrap(e.stats),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "roads",
		Help: "<prefix> - list road segments whose name starts with prefix",
		Func: wrap(e.roads),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "nearest",
		Help: "<lat> <lon> - find the closest intersection",
		Func: wrap(e.nearest),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "dump",
		Help: "print every vertex with its outgoing roads",
		Func: wrap(e.dump),
	})

	shell.Run()
}
