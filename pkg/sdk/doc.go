// Package addictiontube embeds the story search pipeline in a Go program
// without running the HTTP server.
//
// The client embeds a free-text query, looks up the nearest stories of one
// category in a Pinecone, Valkey or Redis vector index and returns at most
// five of them, most relevant first.
//
//	client, err := addictiontube.New(ctx,
//	    addictiontube.WithPinecone(os.Getenv("PINECONE_API_KEY"), "addictiontube-index"),
//	    addictiontube.WithOpenAI(os.Getenv("OPENAI_API_KEY"), ""),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	stories, err := client.SearchStories(ctx, "hope after relapse", "1028")
//
// Empty query or category arguments fall back to the defaults
// ("recovery from addiction", "1028"), which WithDefaults overrides.
package addictiontube
