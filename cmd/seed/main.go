// Command main runs the database seeder for Chatroom.
package main

import (
	"flag"
	"log"

	"chatroom/internal/config"
	"chatroom/internal/database"
	"chatroom/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numChannels := flag.Int("channels", 4, "Number of channels to create")
	postsPerChan := flag.Int("posts", 15, "Number of posts per channel")
	treeDepth := flag.Int("depth", 4, "Reply tree depth per post")
	treeBreadth := flag.Int("breadth", 3, "Direct children per reply")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d channels, %d posts/channel, reply trees %dx%d, clean=%v\n",
		*numUsers, *numChannels, *postsPerChan, *treeDepth, *treeBreadth, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:       *numUsers,
		NumChannels:    *numChannels,
		PostsPerChan:   *postsPerChan,
		ReplyTreeDepth: *treeDepth,
		ReplyBreadth:   *treeBreadth,
		ShouldClean:    *shouldClean,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
