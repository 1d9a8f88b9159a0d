/*
Package ports defines the driven and driving ports (interfaces) of the scene editor.

These interfaces decouple the core logic from external implementations, allowing
the editor to work with various storage backends, template sources and front ends.

# Key Interfaces

  - SceneStore: Responsible for persisting and loading whole Scenes.
  - TemplateLoader: Responsible for loading reusable subtree Templates (e.g., from Loam or Memory).
  - DistributedLocker: Provides distributed locking for the single-writer policy across replicas.
  - SceneEditor: The application surface consumed by the HTTP and MCP adapters.
*/
package ports
